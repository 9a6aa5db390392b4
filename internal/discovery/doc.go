// Package discovery locates Roku devices on the local network via SSDP.
//
// Roku devices answer SSDP M-SEARCH requests for the "roku:ecp" search
// target. A search sends one multicast request to 239.255.255.250:1900 and
// then listens for unicast responses until the timeout window closes.
//
// Two modes are provided:
//
//	scanner := discovery.NewScanner()
//
//	// All responders, full window. Empty slice when the network is quiet.
//	devices, err := scanner.Discover(ctx)
//
//	// First responder, resolves as soon as one device answers. Fails with
//	// *NoDevicesError if the window closes empty.
//	device, err := scanner.First(ctx)
//
// The listening socket is released when the search returns, on every exit
// path. Responses that are not Roku ECP announcements are skipped.
//
// Network requirements: multicast must be allowed on the interface, and the
// device has to be on the same network segment.
package discovery
