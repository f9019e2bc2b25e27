package services

import "kariyer_backend/internal/dto"

var defaultSettingKeys = []string{SettingSite, SettingPlans, SettingPaymentInfo, SettingContact, SettingHome}

var defaultSettings = map[string]interface{}{
	SettingSite: map[string]string{
		"name":        "Kariyer Kamulog",
		"tagline":     "Kamu ve özel sektör ilanları, yapay zeka destekli CV",
		"description": "İlanları takip edin, CV'nizi oluşturun ve uzman danışmanlarla görüşün.",
	},
	SettingPlans: []dto.Plan{
		{
			ID:           "basic",
			Name:         "Temel",
			Description:  "CV analizi ve ilan eşleştirme için AI jetonları",
			Price:        199,
			Currency:     "TRY",
			DurationDays: 30,
			Tokens:       50,
			IsActive:     true,
			Features:     []string{"50 AI jetonu", "Sınırsız CV", "İlan eşleştirme"},
		},
		{
			ID:           "premium",
			Name:         "Premium",
			Description:  "Danışman sohbeti dahil tüm özellikler",
			Price:        499,
			Currency:     "TRY",
			DurationDays: 30,
			Credits:      5,
			Tokens:       200,
			IsPremium:    true,
			IsActive:     true,
			Features:     []string{"200 AI jetonu", "5 danışman görüşmesi", "Öncelikli destek"},
		},
	},
	SettingPaymentInfo: dto.PaymentInfo{
		BankName:      "",
		AccountHolder: "",
		IBAN:          "",
		Instructions:  "Havale açıklamasına sipariş kodunuzu yazınız.",
	},
	SettingContact: map[string]string{
		"email": "destek@kariyerkamulog.com",
		"phone": "",
	},
	SettingHome: map[string]interface{}{
		"hero_title":    "Kariyerinizi yapay zeka ile planlayın",
		"hero_subtitle": "Güncel kamu ve özel sektör ilanları tek yerde",
	},
}

