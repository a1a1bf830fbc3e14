// Package protocol owns the shared contract of the FPM route-update decoders.
//
// Ownership boundary:
// - layer directives handed from one decoder to the next
// - error taxonomy shared by every layer
// - wire, fpm, netlink and rtnetlink subpackages hold the layer decoders
package protocol
