// Package acquisition discovers, downloads, and classifies the companion
// documents of a tender. It extracts hyperlinks from PDF annotations, scrapes
// tender pages through CORS relays, probes candidate links in bounded
// concurrent groups, and labels results as administrative or technical using
// Spanish procurement keyword heuristics.
//
// Network, payload, and parse failures never cross the package boundary as
// errors. Operations that may find nothing return an Outcome.
package acquisition
