package main

import "embed"

//go:embed configs/app.yaml
var configFS embed.FS
