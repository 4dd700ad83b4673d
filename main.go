package main

import "github.com/LaliPerez/registro-asistencia/cmd"

func main() {
	cmd.Execute()
}
