package main

import (
	"context"
	"fmt"
	"log"

	drivepath "github.com/drivepath/go-drivepath"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func newDrive() *drivepath.Drive {
	ctx := context.Background()

	client, err := google.DefaultClient(ctx,
		drive.DriveScope,
	)
	if err != nil {
		log.Panic(err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.Panic(err)
	}

	d, err := drivepath.New(driveService, drivepath.Config{
		Roots: drivepath.Roots{
			"SharedDrive": "0ADHyXmFLm9riUk9PVA",
		},
		TmpDir: "/tmp",
	}, drivepath.WithCache())
	if err != nil {
		log.Panic(err)
	}
	return d
}

func main() {
	d := newDrive()

	// Resolve a path to its remote identifier
	id, err := d.Resolve("/SharedDrive/reports/q1.csv")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Resolved to ID: %s\n", id)

	// Walk all file descendants of a folder
	err = d.WalkFunc("/SharedDrive/reports", drivepath.WalkOptions{Recursive: true}, func(entry drivepath.WalkEntry) error {
		fmt.Printf("%s (ID: %s)\n", entry.Path, entry.Info.ID)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	// Create a directory structure, reusing existing segments
	dirInfo, err := d.MkdirAll("/SharedDrive/reports/2026/q1")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created directory: %s (ID: %s)\n", dirInfo.Name, dirInfo.ID)

	// Upload with overwrite protection and progress
	info, err := d.Write([]byte("date,open,close\n"), "prices.csv", "/SharedDrive/reports/2026/q1", drivepath.WriteOptions{
		Overwrite: false,
		Progress: func(percent int) {
			fmt.Printf("Upload %d%%\n", percent)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote file: %s (ID: %s)\n", info.Name, info.ID)

	// Read it back
	data, err := d.Read("/SharedDrive/reports/2026/q1/prices.csv")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Read %d bytes\n", len(data))

	// Move it next to the older reports
	if err := d.Move("/SharedDrive/reports/2026/q1/prices.csv", "/SharedDrive/reports"); err != nil {
		log.Fatal(err)
	}

	// And delete it
	if err := d.Delete("/SharedDrive/reports/prices.csv"); err != nil {
		log.Fatal(err)
	}
}
