package main

import _ "embed"

// embeddedConfig holds the YAML configuration compiled into the binary. It
// sits below any external config file and the environment.
//
//go:embed deck.yaml
var embeddedConfig []byte
