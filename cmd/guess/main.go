// Command guess is a small console number guessing game.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

func main() {
	reader := bufio.NewReader(os.Stdin)
	for {
		play(reader)
		fmt.Print("Play again? (y/n): ")
		answer, err := reader.ReadString('\n')
		if err != nil || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			return
		}
	}
}

func play(reader *bufio.Reader) {
	secret := rand.Intn(100) + 1
	tries := 0

	for {
		fmt.Print("Guess (1-100): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}

		tries++
		switch {
		case n > secret:
			fmt.Println("Too high")
		case n < secret:
			fmt.Println("Too low")
		default:
			fmt.Printf("Correct! Attempts: %d\n", tries)
			return
		}
	}
}
