package api

type Sender interface {
	SendCommandToTopic(topic Topic, command Command)
	SendError(message string, err error)
}
