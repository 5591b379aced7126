// Package dcb drives the Debug Control Block of an ARMv7-M / ARMv6-M core.
//
// The block holds four registers: DHCSR (halting control and status), DCRSR
// (core register selector, write only), DCRDR (core register data) and DEMCR
// (exception and monitor control). Drivers such as a DWT cycle counter need
// the trace enable bit in DEMCR set before they work; the DCB handle sets and
// clears it without the caller knowing addresses or bit positions.
//
// A handle is obtained with Take, which fails while another handle is live.
// Operations on a handle are plain volatile accesses; none of them lock, and
// none of them are atomic with respect to interrupt handlers touching the
// same registers.
package dcb
