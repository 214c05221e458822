package main

import "github.com/sandeepkv93/trackd/cmd/trackd/root"

func main() {
	root.Execute()
}
