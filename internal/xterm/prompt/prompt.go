// Package prompt provides the two interactive question types the
// collector's bootstrap CLI needs: a free-text string (directory names,
// filename prefixes) and a non-negative integer (rotation thresholds).
// Trimmed from github.com/Data-Corruption/stdx/xterm/prompt, which also
// offers signed-int and yes/no prompts that `logcollector init` has no use
// for.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Uint prompts the user until a valid non-negative integer is entered or
// an error occurs. Used for rotation_age_minutes and rotation_size_kib.
func Uint(p string) (uint, error) { return uintR(os.Stdin, p) }

// String prompts the user for a single line of free text (empty allowed).
// Used for log_directory and log_filename_prefix.
func String(p string) (string, error) { return stringR(os.Stdin, p) }

func uintR(r io.Reader, prompt string) (uint, error) {
	reader := bufio.NewReader(r)
	fullPrompt := fmt.Sprintf("%s: ", prompt)
	for {
		fmt.Print(fullPrompt)
		input, err := readLine(reader)
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("error reading input: %w", err)
		}
		if err == io.EOF && input == "" {
			fmt.Println("No input provided. Please enter a valid non-negative integer.")
			continue
		}
		val, err := strconv.ParseUint(input, 10, 0)
		if err != nil {
			fmt.Println("Invalid input. Please enter a valid non-negative integer.")
			continue
		}
		return uint(val), nil
	}
}

func stringR(r io.Reader, prompt string) (string, error) {
	reader := bufio.NewReader(r)
	fmt.Printf("%s: ", prompt)
	input, err := readLine(reader)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	if err == io.EOF && input == "" {
		fmt.Println()
		return "", nil
	}
	return input, nil
}

func readLine(reader *bufio.Reader) (string, error) {
	str, err := reader.ReadString('\n')
	return strings.TrimSpace(str), err
}
