package main

import "schooladmin/internal/app/server"

func main() {
	server.Run()
}
