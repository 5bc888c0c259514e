package region

// The region table mirrors the platform's published region list. It is
// maintained by hand from https://fly.io/docs/reference/regions/ rather than
// fetched at runtime.
var regions = []Region{
	{Code: "ams", Name: "Amsterdam, Netherlands", City: City{Name: "Amsterdam", Country: "NL", Geo: Point{Lat: 52.374342, Lon: 4.895439}}},
	{Code: "arn", Name: "Stockholm, Sweden", City: City{Name: "Stockholm", Country: "SE", Geo: Point{Lat: 59.6512, Lon: 17.9178}}},
	{Code: "atl", Name: "Atlanta, Georgia (US)", City: City{Name: "Atlanta", Country: "US", Geo: Point{Lat: 33.6407, Lon: -84.4277}}},
	{Code: "bog", Name: "Bogotá, Colombia", City: City{Name: "Bogotá", Country: "CO", Geo: Point{Lat: 4.70159, Lon: -74.1469}}},
	{Code: "bom", Name: "Mumbai, India", City: City{Name: "Mumbai", Country: "IN", Geo: Point{Lat: 19.097403, Lon: 72.874245}}},
	{Code: "bos", Name: "Boston, Massachusetts (US)", City: City{Name: "Boston", Country: "US", Geo: Point{Lat: 42.366978, Lon: -71.02236}}},
	{Code: "cdg", Name: "Paris, France", City: City{Name: "Paris", Country: "FR", Geo: Point{Lat: 48.860875, Lon: 2.353477}}},
	{Code: "den", Name: "Denver, Colorado (US)", City: City{Name: "Denver", Country: "US", Geo: Point{Lat: 39.7392, Lon: -104.9847}}},
	{Code: "dfw", Name: "Dallas, Texas (US)", City: City{Name: "Dallas", Country: "US", Geo: Point{Lat: 32.778287, Lon: -96.7984}}},
	{Code: "ewr", Name: "Secaucus, NJ (US)", City: City{Name: "Secaucus", Country: "US", Geo: Point{Lat: 40.789543, Lon: -74.05653}}},
	{Code: "eze", Name: "Ezeiza, Argentina", City: City{Name: "Ezeiza", Country: "AR", Geo: Point{Lat: -34.8222, Lon: -58.5358}}},
	{Code: "fra", Name: "Frankfurt, Germany", City: City{Name: "Frankfurt", Country: "DE", Geo: Point{Lat: 50.1167, Lon: 8.6833}}},
	{Code: "gdl", Name: "Guadalajara, Mexico", City: City{Name: "Guadalajara", Country: "MX", Geo: Point{Lat: 20.5217, Lon: -103.3109}}},
	{Code: "gig", Name: "Rio de Janeiro, Brazil", City: City{Name: "Rio de Janeiro", Country: "BR", Geo: Point{Lat: -22.8099, Lon: -43.2505}}},
	{Code: "gru", Name: "Sao Paulo, Brazil", City: City{Name: "Sao Paulo", Country: "BR", Geo: Point{Lat: -23.549664, Lon: -46.65435}}},
	{Code: "hkg", Name: "Hong Kong, Hong Kong", City: City{Name: "Hong Kong", Country: "HK", Geo: Point{Lat: 22.25097, Lon: 114.203224}}},
	{Code: "iad", Name: "Ashburn, Virginia (US)", City: City{Name: "Ashburn", Country: "US", Geo: Point{Lat: 39.02214, Lon: -77.462556}}},
	{Code: "jnb", Name: "Johannesburg, South Africa", City: City{Name: "Johannesburg", Country: "ZA", Geo: Point{Lat: -26.13629, Lon: 28.20298}}},
	{Code: "lax", Name: "Los Angeles, California (US)", City: City{Name: "Los Angeles", Country: "US", Geo: Point{Lat: 33.9416, Lon: -118.4085}}},
	{Code: "lhr", Name: "London, United Kingdom", City: City{Name: "London", Country: "GB", Geo: Point{Lat: 51.516434, Lon: -0.125656}}},
	{Code: "maa", Name: "Chennai (Madras), India", City: City{Name: "Chennai", Country: "IN", Geo: Point{Lat: 13.064429, Lon: 80.25307}}},
	{Code: "mad", Name: "Madrid, Spain", City: City{Name: "Madrid", Country: "ES", Geo: Point{Lat: 40.4381, Lon: -3.82}}},
	{Code: "mia", Name: "Miami, Florida (US)", City: City{Name: "Miami", Country: "US", Geo: Point{Lat: 25.7877, Lon: -80.2241}}},
	{Code: "nrt", Name: "Tokyo, Japan", City: City{Name: "Tokyo", Country: "JP", Geo: Point{Lat: 35.62161, Lon: 139.74185}}},
	{Code: "ord", Name: "Chicago, Illinois (US)", City: City{Name: "Chicago", Country: "US", Geo: Point{Lat: 41.891544, Lon: -87.63039}}},
	{Code: "otp", Name: "Bucharest, Romania", City: City{Name: "Bucharest", Country: "RO", Geo: Point{Lat: 44.4325, Lon: 26.1039}}},
	{Code: "phx", Name: "Phoenix, Arizona (US)", City: City{Name: "Phoenix", Country: "US", Geo: Point{Lat: 33.416084, Lon: -112.00948}}},
	{Code: "qro", Name: "Querétaro, Mexico", City: City{Name: "Querétaro", Country: "MX", Geo: Point{Lat: 20.62, Lon: -100.1863}}},
	{Code: "scl", Name: "Santiago, Chile", City: City{Name: "Santiago", Country: "CL", Geo: Point{Lat: -33.36572, Lon: -70.64292}}},
	{Code: "sea", Name: "Seattle, Washington (US)", City: City{Name: "Seattle", Country: "US", Geo: Point{Lat: 47.6097, Lon: -122.3331}}},
	{Code: "sin", Name: "Singapore, Singapore", City: City{Name: "Singapore", Country: "SG", Geo: Point{Lat: 1.3, Lon: 103.8}}},
	{Code: "sjc", Name: "San Jose, California (US)", City: City{Name: "San Jose", Country: "US", Geo: Point{Lat: 37.3516, Lon: -121.89674}}},
	{Code: "syd", Name: "Sydney, Australia", City: City{Name: "Sydney", Country: "AU", Geo: Point{Lat: -33.86603, Lon: 151.20693}}},
	{Code: "waw", Name: "Warsaw, Poland", City: City{Name: "Warsaw", Country: "PL", Geo: Point{Lat: 52.1657, Lon: 20.9671}}},
	{Code: "yul", Name: "Montreal, Canada", City: City{Name: "Montreal", Country: "CA", Geo: Point{Lat: 45.48647, Lon: -73.75549}}},
	{Code: "yyz", Name: "Toronto, Canada", City: City{Name: "Toronto", Country: "CA", Geo: Point{Lat: 43.64463, Lon: -79.38423}}},
}

var regionsByCode = func() map[string]Region {
	m := make(map[string]Region, len(regions))
	for _, r := range regions {
		m[r.Code] = r
	}
	return m
}()
