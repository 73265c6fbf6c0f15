package main

import "github.com/aaronbeall/number-calendar/cmd/numcal"

func main() {
	numcal.Execute()
}
