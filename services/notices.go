package services

import "securecheck/models"

// Reporter is the user-facing surface components write visible messages to.
type Reporter interface {
	Error(msg string)
	Warn(msg string)
}

// Notices collects the messages of one request in order.
type Notices struct {
	Items []models.Notice
}

func (n *Notices) Error(msg string) {
	n.Items = append(n.Items, models.Notice{Level: "error", Message: msg})
}

func (n *Notices) Warn(msg string) {
	n.Items = append(n.Items, models.Notice{Level: "warning", Message: msg})
}

func (n *Notices) HasErrors() bool {
	for _, it := range n.Items {
		if it.Level == "error" {
			return true
		}
	}
	return false
}

type discardReporter struct{}

func (discardReporter) Error(string) {}
func (discardReporter) Warn(string)  {}

// Discard drops every notice.
var Discard Reporter = discardReporter{}
