package cli

import "fmt"

type unknownTopicError struct {
	topic string
}

func (e unknownTopicError) Error() string {
	return fmt.Sprintf("unknown docs topic: %q (run `timepicker docs` to list topics)", e.topic)
}

func errUnknownTopic(topic string) error {
	return unknownTopicError{topic: topic}
}

type flagValueError struct {
	flag string
	err  error
}

func (e flagValueError) Error() string {
	return fmt.Sprintf("--%s: %v", e.flag, e.err)
}

func (e flagValueError) Unwrap() error { return e.err }

func errFlagValue(flag string, err error) error {
	return flagValueError{flag: flag, err: err}
}
