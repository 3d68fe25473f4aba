package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const yearPrompt = "What is the calendar year?: "

// promptYear asks for the calendar year until a valid one is entered or
// input ends.
func promptYear(in io.Reader, out io.Writer) (int, error) {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, yearPrompt)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, errors.New("no year entered")
		}
		y, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err == nil && y >= 1 && y <= 9999 {
			return y, nil
		}
		fmt.Fprintln(out, "Please enter a year between 1 and 9999.")
	}
}
