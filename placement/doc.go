// Package placement reads the Fly.io runtime environment: $FLY_*
// environment variables describing the current app, machine, region, and
// network addresses.
//
// # Usage
//
//	p, err := placement.Current()
//	if err != nil {
//	    // not running under Fly.io
//	}
//	fmt.Println(p.App, p.Location, p.PrivateIP)
package placement
