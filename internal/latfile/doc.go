// Package latfile reads lattice descriptions from disk.
//
// Two formats are accepted. YAML files hold an explicit element list. Files
// ending in .lat, .madx or .seq are parsed as a subset of the MAD-X input
// language: variable assignments, element definitions, LINE definitions
// with repeats and reversal, and a USE statement selecting the beamline.
package latfile
