// Package manifest loads and validates the HCL reload manifest: the storage
// and script roots plus the ordered list of stage blocks. Stage order in the
// file is execution order. When no manifest file is supplied, Default()
// provides the canonical three-layer model.
package manifest
