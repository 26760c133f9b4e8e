// Package preflight runs environment checks before the pipeline starts:
// directory permissions and external tool availability.
package preflight
