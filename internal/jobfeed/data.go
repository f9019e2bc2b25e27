package jobfeed

type institution struct {
	Name     string
	Category string
}

var publicInstitutions = []institution{
	{"Sağlık Bakanlığı", "Sağlık"},
	{"Milli Eğitim Bakanlığı", "Eğitim"},
	{"Adalet Bakanlığı", "Hukuk"},
	{"İçişleri Bakanlığı", "Kamu Yönetimi"},
	{"Hazine ve Maliye Bakanlığı", "Finans"},
	{"Türkiye İstatistik Kurumu", "Bilişim"},
	{"Karayolları Genel Müdürlüğü", "Mühendislik"},
	{"Devlet Su İşleri Genel Müdürlüğü", "Mühendislik"},
	{"Sosyal Güvenlik Kurumu", "Kamu Yönetimi"},
	{"Türkiye İş Kurumu", "İnsan Kaynakları"},
	{"Tapu ve Kadastro Genel Müdürlüğü", "Kamu Yönetimi"},
	{"Gelir İdaresi Başkanlığı", "Finans"},
	{"Ankara Üniversitesi", "Eğitim"},
	{"İstanbul Büyükşehir Belediyesi", "Kamu Yönetimi"},
	{"TCDD Taşımacılık A.Ş.", "Ulaştırma"},
}

var privateInstitutions = []institution{
	{"Anadolu Lojistik A.Ş.", "Ulaştırma"},
	{"Ege Yazılım Teknolojileri", "Bilişim"},
	{"Marmara Özel Hastanesi", "Sağlık"},
	{"Karadeniz Enerji", "Mühendislik"},
	{"Boğaziçi Finans Danışmanlık", "Finans"},
	{"Trakya Gıda San. Tic.", "Üretim"},
	{"Akdeniz Turizm Grubu", "Turizm"},
	{"Kapadokya Eğitim Kurumları", "Eğitim"},
	{"Toros Otomotiv", "Üretim"},
	{"Başkent Hukuk Bürosu", "Hukuk"},
}

// titlesByCategory holds the positions offered per category.
var titlesByCategory = map[string][]string{
	"Sağlık":           {"Hemşire", "Ebe", "Sağlık Teknikeri", "Tıbbi Sekreter", "Eczacı"},
	"Eğitim":           {"Öğretmen", "Araştırma Görevlisi", "Öğretim Görevlisi", "Rehber Öğretmen"},
	"Hukuk":            {"Zabıt Katibi", "İcra Katibi", "Avukat", "Hukuk Müşaviri"},
	"Kamu Yönetimi":    {"Memur", "Veri Hazırlama ve Kontrol İşletmeni", "Şef", "Büro Personeli"},
	"Finans":           {"Muhasebe Uzmanı", "Gelir Uzman Yardımcısı", "Mali Analist", "Vergi Müfettiş Yardımcısı"},
	"Bilişim":          {"Yazılım Geliştirici", "Sistem Yöneticisi", "Veri Analisti", "Siber Güvenlik Uzmanı"},
	"Mühendislik":      {"İnşaat Mühendisi", "Elektrik Mühendisi", "Makine Mühendisi", "Harita Teknikeri"},
	"İnsan Kaynakları": {"İş ve Meslek Danışmanı", "İnsan Kaynakları Uzmanı"},
	"Ulaştırma":        {"Makinist", "Lojistik Uzmanı", "Sevkiyat Sorumlusu"},
	"Üretim":           {"Üretim Mühendisi", "Kalite Kontrol Uzmanı", "Vardiya Amiri"},
	"Turizm":           {"Ön Büro Görevlisi", "Rezervasyon Uzmanı", "Misafir İlişkileri Yöneticisi"},
}

var cities = []string{
	"Ankara", "İstanbul", "İzmir", "Bursa", "Antalya", "Konya", "Adana", "Gaziantep",
	"Kayseri", "Eskişehir", "Samsun", "Trabzon", "Erzurum", "Diyarbakır", "Van",
}

var educationLevels = []string{"Ortaöğretim", "Ön Lisans", "Lisans", "Yüksek Lisans"}

var publicRequirements = []string{
	"KPSS P3 puanı en az 70 olmak",
	"KPSS P93 puanı en az 65 olmak",
	"KPSS P94 puanı en az 60 olmak",
	"Kamu haklarından mahrum bulunmamak",
	"Askerlik ile ilişiği olmamak (erkek adaylar için)",
	"Görevini devamlı yapmasına engel sağlık sorunu bulunmamak",
}

var privateRequirements = []string{
	"İlgili alanda en az 2 yıl deneyim",
	"İyi derecede İngilizce",
	"MS Office programlarına hakimiyet",
	"Takım çalışmasına yatkın",
	"Seyahat engeli bulunmamak",
	"B sınıfı ehliyet sahibi olmak",
}

var privateSalaries = []string{"", "Asgari ücret + prim", "35.000 - 45.000 TL", "45.000 - 60.000 TL", "Görüşmede belirlenecek"}
