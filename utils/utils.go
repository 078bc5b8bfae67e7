// Package utils holds small file-system helpers shared by the
// benchmark harness. Trimmed from the teacher's utils package: Task,
// TaskQueue, CreateTasks, and PrintWorkingDirectory were image-editing
// job-queue bookkeeping with no equivalent in this module's domain (see
// DESIGN.md) and are dropped; WriteToFile survives unchanged since the
// benchmark harness still appends JSON-lines results to a file exactly
// the way the teacher's scheduler did.
package utils

import (
	"fmt"
	"os"
)

// WriteToFile appends text to filename, creating the file if absent.
func WriteToFile(filename string, text string) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("Failed to open or create the file: ", err)
		return
	}
	defer file.Close()

	if _, err := file.WriteString(text); err != nil {
		fmt.Println("Failed to write to the file: ", err)
	}
}
