// Command ritualpair pairs ritual request photos with their chanting
// videos and renames both into a reviewer-friendly output directory.
package main
