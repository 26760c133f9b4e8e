// Package deps checks availability of the external binaries the pipeline
// shells out to.
package deps
