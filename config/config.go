// Package config loads the runtime configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// Lists holds the display names of the destination SharePoint lists.
type Lists struct {
	Invoices       string
	InvoiceItems   string
	Payments       string
	Bills          string
	BillCategories string
	BillRetentions string
	Accounts       string
	Products       string
}

type Config struct {
	// Alegra API credentials (HTTP basic auth).
	AlegraEmail string
	AlegraToken string

	// Azure AD application credentials for Microsoft Graph.
	SharePoint sharepoint.Credentials

	SiteURL     string
	Lists       Lists
	ExcelFolder string

	// Date range for the historical backfill.
	StartDate string
	EndDate   string
}

// Load reads the configuration from the environment. If envfile exists it is
// loaded first; a missing file is not an error, variables already present in
// the environment always win.
func Load(envfile string) (*Config, error) {
	if _, err := os.Stat(envfile); err == nil {
		if err := godotenv.Load(envfile); err != nil {
			return nil, fmt.Errorf("loading %v: %w", envfile, err)
		}
	}

	config := Config{
		AlegraEmail: os.Getenv("email"),
		AlegraToken: os.Getenv("password"),

		SharePoint: sharepoint.Credentials{
			TenantID:     os.Getenv("tenant_id"),
			ClientID:     os.Getenv("client_id"),
			ClientSecret: os.Getenv("client_secret"),
		},

		SiteURL: os.Getenv("site_url"),

		Lists: Lists{
			Invoices:       os.Getenv("list_facturas"),
			InvoiceItems:   os.Getenv("list_items"),
			Payments:       os.Getenv("list_pagos"),
			Bills:          getenv("list_facturas_compra", "Facturas de Compra"),
			BillCategories: getenv("list_categorias_compra", "Categorias Facturas Compra"),
			BillRetentions: getenv("list_retenciones_compra", "Retenciones Facturas de Compra"),
			Accounts:       getenv("list_cuentas_contables", "Cuentas Contables"),
			Products:       getenv("list_items_products", "Items"),
		},

		ExcelFolder: getenv("carpeta_excel", "Documentos compartidos/Datos/Alegra"),

		StartDate: getenv("FECHA_INICIO", "2024-01-01"),
		EndDate:   os.Getenv("FECHA_FIN"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.AlegraEmail == "" || c.AlegraToken == "" {
		return fmt.Errorf("missing Alegra credentials (email, password)")
	}

	if c.SharePoint.TenantID == "" || c.SharePoint.ClientID == "" || c.SharePoint.ClientSecret == "" {
		return fmt.Errorf("missing Azure AD credentials (tenant_id, client_id, client_secret)")
	}

	if c.SiteURL == "" {
		return fmt.Errorf("missing SharePoint site URL (site_url)")
	}

	return nil
}

func getenv(name string, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return fallback
}
