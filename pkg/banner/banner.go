package banner

import (
	"fmt"

	"minihttpd/pkg/config"
)

const banner = `
███╗   ███╗██╗███╗   ██╗██╗██╗  ██╗████████╗████████╗██████╗ ██████╗
████╗ ████║██║████╗  ██║██║██║  ██║╚══██╔══╝╚══██╔══╝██╔══██╗██╔══██╗
██╔████╔██║██║██╔██╗ ██║██║███████║   ██║      ██║   ██████╔╝██║  ██║
██║╚██╔╝██║██║██║╚██╗██║██║██╔══██║   ██║      ██║   ██╔═══╝ ██║  ██║
██║ ╚═╝ ██║██║██║ ╚████║██║██║  ██║   ██║      ██║   ██║     ██████╔╝
╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═╝╚═╝  ╚═╝   ╚═╝      ╚═╝   ╚═╝     ╚═════╝
`

// Print prints the startup banner with the effective runtime values.
func Print(eff config.Effective, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", eff.Addr)
	fmt.Printf("Static:   %s\n", eff.StaticRoot)
	if eff.Config != nil && eff.Config.Storage.Driver == "pebble" {
		fmt.Printf("DB Path:  %s\n", eff.DBPath)
	} else {
		fmt.Println("Store:    in-memory")
	}
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	fmt.Printf("Config:   %s\n", eff.Source)
	if eff.Config != nil && eff.Config.Ops.Enabled {
		fmt.Printf("Ops:      %s (/healthz /readyz /metrics /docs)\n", eff.Config.OpsAddr())
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("GET  /          - greeting page")
	fmt.Println("GET  /login     - login form; ?account=..&password=.. to sign in")
	fmt.Println("POST /register  - form fields account, password, email")
	fmt.Println("GET  /<file>    - static asset from the assets root")
	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl -v 'http://localhost%s/login?account=admin&password=password'\n", portSuffix(eff.Addr))
	fmt.Printf("curl -v -X POST 'http://localhost%s/register' -d 'account=foo&password=bar&email=x@y.com'\n", portSuffix(eff.Addr))
}

func portSuffix(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ""
}
