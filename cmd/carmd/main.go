package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/motorlane-hq/carmd-go/internal/config"
	"github.com/motorlane-hq/carmd-go/internal/logger"
	"github.com/motorlane-hq/carmd-go/pkg/carmd"
	"github.com/motorlane-hq/carmd-go/pkg/httpclient"
)

var (
	app = kingpin.New("carmd", "Query the CarMD vehicle-data API. Credentials come from CARMD_KEY and CARMD_SECRET.")

	decodeCmd = app.Command("decode", "Decode a VIN.")
	decodeVIN = decodeCmd.Arg("vin", "17-character VIN.").Required().String()

	recallsCmd       = app.Command("recalls", "List safety recalls for a decoded vehicle.")
	recallsVehicleID = recallsCmd.Arg("vehicle-id", "Decoded vehicle record id.").Required().String()

	repairCmd       = app.Command("repair", "Predicted repair report for the next 12 months.")
	repairVehicleID = repairCmd.Flag("vehicle-id", "Decoded vehicle record id.").String()
	repairTag       = repairCmd.Flag("tag", "Device tag.").String()
	repairFleetID   = repairCmd.Flag("fleet-id", "Fleet id.").String()

	warrantyCmd       = app.Command("warranty", "Factory warranty terms for a decoded vehicle.")
	warrantyVehicleID = warrantyCmd.Arg("vehicle-id", "Decoded vehicle record id.").Required().String()

	maintCmd     = app.Command("maint", "Next scheduled maintenance items.")
	maintVIN     = maintCmd.Arg("vin", "17-character VIN.").Required().String()
	maintMileage = maintCmd.Arg("mileage", "Current vehicle mileage.").Required().Int()

	makesCmd = app.Command("makes", "List vehicle makes.")

	yearsCmd  = app.Command("years", "List model years for a make.")
	yearsMake = yearsCmd.Arg("make", "Vehicle make, e.g. Toyota.").Required().String()

	modelsCmd  = app.Command("models", "List models for a year and make.")
	modelsYear = modelsCmd.Arg("year", "4-digit model year.").Required().Int()
	modelsMake = modelsCmd.Arg("make", "Vehicle make, e.g. Toyota.").Required().String()
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "carmd: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command, err := app.Parse(args)
	if err != nil {
		return fmt.Errorf("parse arguments: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	client, err := carmd.New(carmd.Config{
		Key:     cfg.Key,
		Secret:  cfg.Secret,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var resp httpclient.Response
	switch command {
	case decodeCmd.FullCommand():
		resp, err = client.DecodeVIN(ctx, *decodeVIN)
	case recallsCmd.FullCommand():
		resp, err = client.SafetyRecalls(ctx, *recallsVehicleID)
	case repairCmd.FullCommand():
		resp, err = client.PredictedRepair(ctx, carmd.RepairQuery{
			VehicleID: *repairVehicleID,
			Tag:       *repairTag,
			FleetID:   *repairFleetID,
		})
	case warrantyCmd.FullCommand():
		resp, err = client.Warranty(ctx, *warrantyVehicleID)
	case maintCmd.FullCommand():
		resp, err = client.NextMaintenance(ctx, *maintVIN, *maintMileage)
	case makesCmd.FullCommand():
		resp, err = client.Makes(ctx)
	case yearsCmd.FullCommand():
		resp, err = client.Years(ctx, *yearsMake)
	case modelsCmd.FullCommand():
		resp, err = client.Models(ctx, *modelsYear, *modelsMake)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	log.Debugw("carmd response", "status", resp.StatusCode())
	if resp.IsError() {
		log.Warnw("upstream returned an error status", "status", resp.StatusCode())
	}

	// The body is printed raw; parsing is the caller's business.
	fmt.Println(string(resp.Body()))
	return nil
}
