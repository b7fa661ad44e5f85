package main

import "github.com/orgtarefas/planner/cmd/plannerctl/cmd"

func main() {
	cmd.Execute()
}
