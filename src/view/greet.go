package view

import "fmt"

//Notifier is the host side alert
type Notifier interface {
	Alert(msg string)
}

//Greeting formats the greeting for name
func Greeting(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

//Greet sends the greeting to the notifier
func Greet(n Notifier, name string) {
	n.Alert(Greeting(name))
}
