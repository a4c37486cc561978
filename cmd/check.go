package cmd

import (
	"context"
	"fmt"
	"time"
)

// CheckCmd runs the connection diagnostic against the configured Ghost
// instance and prints the report - a convenience wrapper around the
// debug_api_connection tool for operators.
type CheckCmd struct {
	TimeoutSec int `long:"timeout" description:"Seconds to wait for completion" default:"90"`
}

func (c *CheckCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	out, err := svc.ExecuteTool(context.Background(), "debug_api_connection", nil, time.Duration(c.TimeoutSec)*time.Second)
	if err != nil {
		return err
	}
	switch v := out.(type) {
	case string:
		fmt.Println(v)
	case []byte:
		fmt.Println(string(v))
	default:
		fmt.Printf("%v\n", v)
	}
	return nil
}
