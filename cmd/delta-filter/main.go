// cmd/delta-filter/main.go
package main

import (
	"deltafilter/internal/app"
	"deltafilter/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
