package telegram

import "ergo-proxy/api/internal/analysis"

type botTexts struct {
	Help        string
	LangUsage   string
	LangSet     string
	Unknown     string
	Accepted    string
	NotAnImage  string
	DownloadErr string
	HealthOK    string
	KeyMissing  string
}

var texts = map[analysis.Language]botTexts{
	analysis.Spanish: {
		Help: "Envíame una foto de tu puesto de trabajo y te devolveré un análisis ergonómico.\n" +
			"Comandos: /lang es|en, /health, /help",
		LangUsage:   "Uso: /lang es | /lang en (actual: %s)",
		LangSet:     "✅ Idioma: español",
		Unknown:     "Comando desconocido. Usa /help",
		Accepted:    "📸 Imagen recibida, analizando... (5-10 segundos)",
		NotAnImage:  "Formato no soportado. Usa imágenes (JPG, PNG).",
		DownloadErr: "No pude descargar la imagen, inténtalo de nuevo.",
		HealthOK:    "✅ OK · modelo %s",
		KeyMissing:  "⚠️ API Key no configurada",
	},
	analysis.English: {
		Help: "Send me a photo of your workstation and I will reply with an ergonomic assessment.\n" +
			"Commands: /lang es|en, /health, /help",
		LangUsage:   "Usage: /lang es | /lang en (current: %s)",
		LangSet:     "✅ Language: English",
		Unknown:     "Unknown command. Try /help",
		Accepted:    "📸 Image received, analyzing... (5-10 seconds)",
		NotAnImage:  "Unsupported format. Use images (JPG, PNG).",
		DownloadErr: "Could not download the image, please try again.",
		HealthOK:    "✅ OK · model %s",
		KeyMissing:  "⚠️ API Key not configured",
	},
}

func textsFor(lang analysis.Language) botTexts {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[analysis.DefaultLanguage]
}
