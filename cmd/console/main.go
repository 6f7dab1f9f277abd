package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"go.bug.st/serial"

	"quimiview/internal/console"
)

func main() {
	port := flag.String("port", defaultPort(), "serial port of the device")
	baud := flag.Int("baud", 9600, "baud rate")
	logPath := flag.String("log", "quimikey_log.txt", "record log file, appended to")
	flag.Parse()

	fmt.Printf("Connecting to device on %s...\n", *port)
	dev, err := serial.Open(*port, &serial.Mode{BaudRate: *baud})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not connect to device on %s: %v\n", *port, err)
		os.Exit(1)
	}
	defer dev.Close()
	if err := dev.SetReadTimeout(100 * time.Millisecond); err != nil {
		fmt.Fprintf(os.Stderr, "Error: set read timeout: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Connected.")

	sess := console.NewSession(dev, os.Stdout, *logPath)
	runMenu(sess, bufio.NewScanner(os.Stdin))
	fmt.Println("Connection closed.")
}

func defaultPort() string {
	if runtime.GOOS == "windows" {
		return "COM6"
	}
	return "/dev/ttyUSB0"
}

func printMenu() {
	fmt.Println()
	fmt.Println("======= DEVICE MENU =======")
	fmt.Println("[1] Test connection (PING)")
	fmt.Println("[2] Setup mode")
	fmt.Println("[3] Normal mode")
	fmt.Println("[4] Request element (by atomic number)")
	fmt.Println("[5] Listen for device output")
	fmt.Println("[6] Quit")
	fmt.Println("===========================")
}

func runMenu(sess *console.Session, in *bufio.Scanner) {
	for {
		printMenu()
		fmt.Print("Choose an option: ")
		if !in.Scan() {
			return
		}
		var err error
		switch strings.TrimSpace(in.Text()) {
		case "1":
			err = sess.Ping()
		case "2":
			err = sess.SetupMode()
		case "3":
			err = sess.NormalMode()
		case "4":
			fmt.Print("Atomic number: ")
			if !in.Scan() {
				return
			}
			number := strings.TrimSpace(in.Text())
			if number == "" {
				fmt.Println("Atomic number required.")
				continue
			}
			err = sess.RequestElement(number)
		case "5":
			fmt.Println("Listening for device output (press Enter to stop)...")
			stop := make(chan struct{})
			done := make(chan struct{})
			go func() {
				sess.Listen(stop)
				close(done)
			}()
			in.Scan()
			close(stop)
			<-done
		case "6":
			fmt.Println("Closing session...")
			return
		default:
			fmt.Println("Invalid option.")
		}
		if err != nil {
			fmt.Println("Error:", err)
		}
		time.Sleep(300 * time.Millisecond)
	}
}
