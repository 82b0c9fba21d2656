package main

import (
	"errors"
	"strconv"
	"testing"
)

func Test_parseObject(t *testing.T) {
	tests := []struct {
		in       string
		expected objectSpec
		wantErr  bool
	}{
		{"glider:5:5", objectSpec{"glider", 5, 5}, false},
		{"pulsar:0:12", objectSpec{"pulsar", 0, 12}, false},
		{"spaceship:100:3", objectSpec{"spaceship", 100, 3}, false},
		{"glider:5", objectSpec{}, true},
		{"glider:a:5", objectSpec{}, true},
		{"glider:5:-1", objectSpec{}, true},
		{"blinker:1:1", objectSpec{}, true},
		{"", objectSpec{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseObject(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("got %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func Test_parseObject_Errors(t *testing.T) {
	_, err := parseObject("glider:x:1")
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("the row parse error is not wrapped: %v", err)
	}
	_, err = parseObject("glider:1:-2")
	if !errors.Is(err, errNegative) {
		t.Errorf("the negative column error is not wrapped: %v", err)
	}
}
