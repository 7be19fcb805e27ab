package main

import "github.com/CrazyVinc/web-scraper/internal/cli"

func main() {
	cli.Execute()
}
