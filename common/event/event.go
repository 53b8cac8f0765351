package event

import (
	"fmt"
	messagebus "github.com/vardius/message-bus"
	"reflect"
	"sync"
	"vincit.fi/imgsmlr/api"
	"vincit.fi/imgsmlr/common/logger"
)

type Broker struct {
	bus      messagebus.MessageBus
	handlers map[api.Topic]int
	mux      sync.Mutex
	pending  sync.WaitGroup

	api.Sender
}

func InitBus(queueSize int) *Broker {
	return &Broker{
		bus:      messagebus.New(queueSize),
		handlers: map[api.Topic]int{},
	}
}

// Subscribe registers fn as a handler of topic. Each handler runs in its own
// goroutine and receives the commands in the order they were sent.
func (s *Broker) Subscribe(topic api.Topic, fn interface{}) {
	handler := reflect.ValueOf(fn)
	if handler.Kind() != reflect.Func {
		logger.Error.Panicf("Could not subscribe to '%s': %T is not a function", topic, fn)
	}
	tracked := reflect.MakeFunc(handler.Type(), func(args []reflect.Value) []reflect.Value {
		defer s.pending.Done()
		return handler.Call(args)
	})

	s.mux.Lock()
	defer s.mux.Unlock()
	if err := s.bus.Subscribe(string(topic), tracked.Interface()); err != nil {
		logger.Error.Panic("Could not subscribe ", err)
	}
	s.handlers[topic]++
}

func (s *Broker) SendCommandToTopic(topic api.Topic, command api.Command) {
	logger.Trace.Printf("Sending command to '%s'", topic)
	s.mux.Lock()
	defer s.mux.Unlock()
	if count := s.handlers[topic]; count > 0 {
		s.pending.Add(count)
		s.bus.Publish(string(topic), command)
	}
}

func (s *Broker) SendError(message string, err error) {
	formattedMessage := ""
	if err != nil {
		formattedMessage = fmt.Sprintf("%s\n%s", message, err.Error())
	} else {
		formattedMessage = message
	}
	logger.Error.Printf("Error: %s", formattedMessage)
	s.SendCommandToTopic(api.ShowError, &api.ErrorCommand{Message: formattedMessage})
}

// Close unsubscribes all handlers and returns once they have processed every
// command already sent.
func (s *Broker) Close() {
	s.mux.Lock()
	for topic := range s.handlers {
		s.bus.Close(string(topic))
	}
	s.handlers = map[api.Topic]int{}
	s.mux.Unlock()

	s.pending.Wait()
}
