package main

import (
	"github.com/afya-care/monitoring/cmd/afya/command"
)

func main() {
	command.Execute()
}
