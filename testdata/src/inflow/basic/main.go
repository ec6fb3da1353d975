package main

import (
	"fmt"
	"os"
)

// Request is a request received by the program
type Request struct {
	Body string
}

var secretToken = "token"

func getInput() string {
	return os.Getenv("INPUT")
}

func (r *Request) body() string {
	return r.Body
}

func handle(r *Request, n int) { // @Source(entry)
	fmt.Println(r.body(), n)
	send(fmt.Sprint("attempt", n), 3) // @Source(arg)
}

func send(data string, retries int) {
	fmt.Println(data, retries, secretToken)
}

func main() {
	s := getInput() // @Source(ret)
	r := &Request{Body: s}
	handle(r, 1)
	if len(os.Args) > 1 {
		s = getInput() // @Source(ret2)
	}
	fmt.Println(s)
}
