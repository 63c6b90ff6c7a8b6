package main

import "github.com/thereayou/studnet/cmd/server"

func main() {
	server.NewServer().Run()
}
