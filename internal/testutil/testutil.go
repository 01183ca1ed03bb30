//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for integration testing.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// DefaultTestConnString is the default connection string for tests.
// Override with RISKGEN_TEST_CONN environment variable.
const DefaultTestConnString = "clickhouse://default@localhost:9000/default"

// ClickHouseAvailable checks if ClickHouse is available for testing.
// Returns the connection string if available, empty string otherwise.
func ClickHouseAvailable() string {
	connStr := os.Getenv("RISKGEN_TEST_CONN")
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts, err := clickhouse.ParseDSN(connStr)
	if err != nil {
		return ""
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return ""
	}
	defer conn.Close()

	if err := conn.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoClickHouse skips the test if ClickHouse is not available.
func SkipIfNoClickHouse(t *testing.T) string {
	connStr := ClickHouseAvailable()
	if connStr == "" {
		t.Skip("ClickHouse not available; set RISKGEN_TEST_CONN to run this test")
	}
	return connStr
}
