// Command natal renders natal charts and opens the interactive viewer.
package main

import "github.com/papapumpkin/natal/cmd"

func main() {
	cmd.Execute()
}
