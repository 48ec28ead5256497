package main

import (
	_ "time/tzdata"

	"sololevel/cmd/sl/root"
)

func main() {
	root.Execute()
}
