/*
Copyright 2023 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cli

import (
	"math/rand"
	"strings"
	"time"
)

var (
	exitStrings = map[string]bool{
		"q":    true,
		"quit": true,
		"exit": true,
	}

	exitQuotes = []string{
		"\nPeople say nothing is impossible, but I do nothing every day.",
		"\nI want my children to have all the things I couldn’t afford. Then I want to move in with them.",
		"\nI have always wanted to be somebody, but I see now I should have been more specific.",
		"\nI finally realized that people are prisoners of their phones... that's why it's called a 'cell' phone.",
		"\nSometimes when I close my eyes, I can't see.",
		"\nHere’s some advice: At a job interview, tell them you’re willing to give 110 percent. Unless the job is a statistician.",
		"\nWhy do they call it rush hour when nothing moves?",
		"\nNever put off till tomorrow what you can do the day after tomorrow just as well.",
	}
)

// IsExitWord reports whether the input line is one of the words that
// should end an interactive session.
func IsExitWord(qs string) bool {
	return exitStrings[strings.TrimSpace(qs)]
}

// ExitQuote picks a parting line for the way out.
func ExitQuote() string {
	s := rand.NewSource(time.Now().Unix())
	r := rand.New(s)
	return exitQuotes[r.Intn(len(exitQuotes))]
}
