// Package hcl provides the concrete HCL implementation of the configuration
// loading interface defined in the `config` package. It is responsible for
// all file parsing, HCL-to-model translation, and CTY-to-Go data binding for
// export values.
package hcl
