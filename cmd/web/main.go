package main

import "laddercall_backend/internal/app"

func main() {
	app.Run()
}
