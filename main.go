package main

import (
	"github.com/CameraRick/onAir-fanControl/cmd"
)

func main() {
	cmd.Execute()
}
