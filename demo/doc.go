// Package demo is a small HTTP service showing off the module: it reports
// where it runs, who connected to it, and which peers it can see.
package demo
