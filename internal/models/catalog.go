package models

import "github.com/baharkarakas/ppob-wallet/internal/money"

// Service is a payable catalog entry with a fixed tariff.
type Service struct {
	ID     int64       `json:"-"`
	Code   string      `json:"service_code"`
	Name   string      `json:"service_name"`
	Icon   string      `json:"service_icon"`
	Tariff money.Money `json:"service_tariff"`
}

type Banner struct {
	Name        string `json:"banner_name"`
	Image       string `json:"banner_image"`
	Description string `json:"description"`
}
