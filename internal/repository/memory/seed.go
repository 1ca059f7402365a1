package memory

import (
	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/money"
)

// DefaultServices mirrors the rows inserted by migration 000001.
func DefaultServices() []models.Service {
	rows := []struct {
		code, name, icon string
		tariff           int64
	}{
		{"PAJAK", "Pajak PBB", "https://nutech-integrasi.app/dummy.jpg", 40000},
		{"PLN", "Listrik", "https://nutech-integrasi.app/dummy.jpg", 10000},
		{"PDAM", "PDAM Berlangganan", "https://nutech-integrasi.app/dummy.jpg", 40000},
		{"PULSA", "Pulsa", "https://nutech-integrasi.app/dummy.jpg", 40000},
		{"PGN", "PGN Berlangganan", "https://nutech-integrasi.app/dummy.jpg", 50000},
		{"MUSIK", "Musik Berlangganan", "https://nutech-integrasi.app/dummy.jpg", 50000},
		{"TV", "TV Berlangganan", "https://nutech-integrasi.app/dummy.jpg", 50000},
		{"PAKET_DATA", "Paket data", "https://nutech-integrasi.app/dummy.jpg", 50000},
		{"VOUCHER_GAME", "Voucher Game", "https://nutech-integrasi.app/dummy.jpg", 100000},
		{"VOUCHER_MAKANAN", "Voucher Makanan", "https://nutech-integrasi.app/dummy.jpg", 100000},
		{"QURBAN", "Qurban", "https://nutech-integrasi.app/dummy.jpg", 200000},
		{"ZAKAT", "Zakat", "https://nutech-integrasi.app/dummy.jpg", 300000},
	}
	out := make([]models.Service, 0, len(rows))
	for i, r := range rows {
		out = append(out, models.Service{
			ID:     int64(i + 1),
			Code:   r.code,
			Name:   r.name,
			Icon:   r.icon,
			Tariff: money.FromInt(r.tariff),
		})
	}
	return out
}

func DefaultBanners() []models.Banner {
	out := make([]models.Banner, 0, 6)
	for _, n := range []string{"1", "2", "3", "4", "5", "6"} {
		out = append(out, models.Banner{
			Name:        "Banner " + n,
			Image:       "https://nutech-integrasi.app/dummy.jpg",
			Description: "Lerem Ipsum Dolor sit amet",
		})
	}
	return out
}
