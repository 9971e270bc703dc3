// Package fold hides regions of lines under a visible header line.
//
// Regions come from language fold services, falling back to indentation.
// Folds are keyed by their header line and follow document edits.
package fold
