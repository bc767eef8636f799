// Package processor implements the command-line operations of dolmetscher:
// translating arguments, files or standard input, managing the stored API
// key, listing models and launching the GUI.
package processor
