// Package discovery finds users API instances on the local network over
// multicast DNS.
//
// The fake API advertises itself as "_userdeck._tcp" with TXT records
// describing the resource path and build version. Clients browse for that
// service type and turn each answer into a base URL:
//
//	services, err := discovery.Discover(ctx, 3*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, svc := range services {
//	    fmt.Println(svc.Instance, svc.BaseURL())
//	}
//
// The public service is never advertised; discovery only helps point the
// client at a local stand-in.
package discovery
