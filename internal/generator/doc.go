// Package generator produces the system-layer stage script from a YAML
// warehouse schema. Each table becomes an incremental load block: prior
// record hashes and the max incremental value are read from the existing QVD
// target when present, new rows are hashed and appended, and the result is
// stored back. The output is deterministic for a given schema.
package generator
