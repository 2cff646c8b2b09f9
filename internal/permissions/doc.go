// Package permissions restricts which hosts a node run may contact and which
// stored secrets its credentials may reference.
//
// Both checks are opt-in: a nil policy allows everything. Host patterns
// accept exact names, "*" wildcards and CIDR ranges; secret patterns are
// doublestar globs over secret keys.
package permissions
