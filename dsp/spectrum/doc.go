// Package spectrum provides the small spectrum-domain toolkit used to inspect
// the telephony filters: a Goertzel single-bin analyzer that reads float or
// 16-bit PCM input, and magnitude helpers for complex FFT bins.
package spectrum
