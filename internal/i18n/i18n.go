// Package i18n holds the fixed string table for the three supported
// languages. Missing keys fall back to Russian, then to the key itself.
package i18n

import "fmt"

// Lang is a supported interface language.
type Lang string

const (
	RU Lang = "ru"
	UZ Lang = "uz"
	EN Lang = "en"
)

// All lists supported languages in menu order.
var All = []Lang{RU, UZ, EN}

// FromButton maps a language-selection button caption to a Lang.
func FromButton(text string) (Lang, bool) {
	switch text {
	case "RU":
		return RU, true
	case "UZ":
		return UZ, true
	case "EN":
		return EN, true
	}
	return "", false
}

// Normalize coerces a stored language code into a supported Lang.
func Normalize(code string) Lang {
	switch Lang(code) {
	case RU, UZ, EN:
		return Lang(code)
	}
	return RU
}

// DisplayName returns the self-name of a language for the settings screen.
func DisplayName(l Lang) string {
	switch l {
	case UZ:
		return "O'zbek"
	case EN:
		return "English"
	}
	return "Русский"
}

// T returns the translated string for key.
func T(l Lang, key string) string {
	if table, ok := strings[Normalize(string(l))]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := strings[RU][key]; ok {
		return s
	}
	return key
}

// Tf formats the translated string for key with args.
func Tf(l Lang, key string, args ...any) string {
	return fmt.Sprintf(T(l, key), args...)
}

var strings = map[Lang]map[string]string{
	RU: {
		"choose_lang":           "Пожалуйста, выберите язык / Tilni tanlang / Please choose a language:",
		"main_menu":             "Главное меню:",
		"get_name":              "Введите ваше ФИО:",
		"get_phone":             "Отправьте ваш номер телефона или нажмите кнопку ниже:",
		"phone_invalid":         "Неверный формат номера. Попробуйте ещё раз:",
		"share_phone":           "📱 Поделиться номером",
		"online_events":         "Онлайн ивенты",
		"offline_events":        "Оффлайн ивенты",
		"about_us":              "О нас",
		"settings":              "Настройки",
		"change_name":           "Изменить ФИО",
		"change_phone":          "Изменить номер",
		"change_lang":           "Выбор языка",
		"main_menu_btn":         "Главное меню",
		"use_buttons":           "Пожалуйста, используйте кнопки.",
		"no_events":             "Пока нет доступных ивентов.",
		"already_reg":           "Вы уже зарегистрированы на этот ивент.",
		"event_full":            "❌ Мест нет.",
		"register_btn":          "✍️ Регистрация",
		"confirm_reg":           "Подтвердите регистрацию:\n\nФИО: %s\nТелефон: %s",
		"confirm_btn":           "✅ Подтвердить",
		"edit_name_btn":         "✏️ Изменить ФИО",
		"edit_phone_btn":        "✏️ Изменить номер",
		"reg_success":           "🎉 Вы успешно зарегистрированы! Ваш билет ниже.",
		"curr_profile":          "Ваш профиль:\n\nФИО: %s\nТелефон: %s\nЯзык: %s",
		"name_changed":          "ФИО обновлено.",
		"phone_changed":         "Номер обновлён.",
		"about_text":            "Avlod Adventures — ивенты, путешествия и сообщество. Подписывайтесь:",
		"spots":                 "👥 Мест: %d/%d",
		"spots_unlimited":       "👥 Мест: ∞",
		"location_label":        "📍 Локация",
		"admin_pass":            "Введите пароль администратора:",
		"moder_pass":            "Введите пароль модератора:",
		"wrong_pass":            "Неверный пароль.",
		"admin_menu":            "Меню администратора:",
		"active_events":         "Активные ивенты",
		"create_cat":            "Создать категорию",
		"add_event":             "Добавить ивент",
		"edit_event":            "Редактировать ивент",
		"exit_admin":            "Выйти из админки",
		"cat_name":              "Введите название категории:",
		"cat_saved":             "Категория сохранена.",
		"cat_duplicate":         "Категория с таким названием уже существует.",
		"choose_cat":            "Выберите категорию:",
		"send_img":              "Отправьте изображение ивента:",
		"img_invalid":           "Пожалуйста, отправьте фотографию.",
		"send_desc":             "Отправьте описание ивента:",
		"send_time":             "Укажите время проведения (свободный текст):",
		"send_date":             "Укажите дату проведения (свободный текст):",
		"send_capacity":         "Укажите количество мест (0 — без ограничения):",
		"capacity_invalid":      "Пожалуйста, введите число (0 или больше).",
		"send_location":         "Отправьте геолокацию места проведения:",
		"location_invalid":      "Пожалуйста, отправьте геолокацию через вложение.",
		"event_saved":           "Ивент сохранён.",
		"event_deleted":         "Ивент удалён.",
		"event_updated":         "Поле обновлено.",
		"new_event_notify":      "🔥 Появился новый ивент! Загляните в меню ивентов.",
		"pick_event":            "Выберите ивент:",
		"edit_field_menu":       "Что изменить?",
		"field_image":           "Изображение",
		"field_desc":            "Описание",
		"field_time":            "Время",
		"field_date":            "Дата",
		"field_capacity":        "Количество мест",
		"field_location":        "Локация",
		"delete_btn":            "🗑 Удалить ивент",
		"back_btn":              "⬅️ Назад",
		"send_new_value":        "Отправьте новое значение:",
		"check_phone":           "Введите номер телефона для проверки:",
		"check_another":         "Введите другой номер для проверки или /moder для выхода.",
		"participant_found":     "✅ Участник найден:\n\nФИО: %s\nТелефон: %s",
		"participant_not_found": "❌ Участник не найден\n\nНомер: %s",
	},
	UZ: {
		"main_menu":        "Asosiy menyu:",
		"get_name":         "F.I.Sh. kiriting:",
		"get_phone":        "Telefon raqamingizni yuboring yoki pastdagi tugmani bosing:",
		"phone_invalid":    "Raqam formati noto'g'ri. Qayta urinib ko'ring:",
		"share_phone":      "📱 Raqamni ulashish",
		"online_events":    "Onlayn tadbirlar",
		"offline_events":   "Offlayn tadbirlar",
		"about_us":         "Biz haqimizda",
		"settings":         "Sozlamalar",
		"change_name":      "FIO o'zgartirish",
		"change_phone":     "Raqamni o'zgartirish",
		"change_lang":      "Tilni tanlash",
		"main_menu_btn":    "Asosiy menyu",
		"use_buttons":      "Iltimos, tugmalardan foydalaning.",
		"no_events":        "Hozircha tadbirlar yo'q.",
		"already_reg":      "Siz bu tadbirga allaqachon ro'yxatdan o'tgansiz.",
		"event_full":       "❌ O'rinlar yo'q.",
		"register_btn":     "✍️ Ro'yxatdan o'tish",
		"confirm_reg":      "Ro'yxatdan o'tishni tasdiqlang:\n\nF.I.Sh: %s\nTelefon: %s",
		"confirm_btn":      "✅ Tasdiqlash",
		"edit_name_btn":    "✏️ FIO o'zgartirish",
		"edit_phone_btn":   "✏️ Raqamni o'zgartirish",
		"reg_success":      "🎉 Siz muvaffaqiyatli ro'yxatdan o'tdingiz! Chiptangiz pastda.",
		"curr_profile":     "Profilingiz:\n\nF.I.Sh: %s\nTelefon: %s\nTil: %s",
		"name_changed":     "F.I.Sh yangilandi.",
		"phone_changed":    "Raqam yangilandi.",
		"about_text":       "Avlod Adventures — tadbirlar, sayohatlar va jamiyat. Obuna bo'ling:",
		"spots":            "👥 O'rinlar: %d/%d",
		"spots_unlimited":  "👥 O'rinlar: ∞",
		"location_label":   "📍 Joylashuv",
		"new_event_notify": "🔥 Yangi tadbir paydo bo'ldi! Tadbirlar menyusiga qarang.",
	},
	EN: {
		"main_menu":        "Main menu:",
		"get_name":         "Enter your full name:",
		"get_phone":        "Send your phone number or use the button below:",
		"phone_invalid":    "Invalid phone format. Try again:",
		"share_phone":      "📱 Share phone",
		"online_events":    "Online Events",
		"offline_events":   "Offline Events",
		"about_us":         "About Us",
		"settings":         "Settings",
		"change_name":      "Change Name",
		"change_phone":     "Change Phone",
		"change_lang":      "Choose language",
		"main_menu_btn":    "Main Menu",
		"use_buttons":      "Please use the buttons.",
		"no_events":        "No events available yet.",
		"already_reg":      "You are already registered for this event.",
		"event_full":       "❌ No spots available.",
		"register_btn":     "✍️ Register",
		"confirm_reg":      "Confirm your registration:\n\nName: %s\nPhone: %s",
		"confirm_btn":      "✅ Confirm",
		"edit_name_btn":    "✏️ Edit name",
		"edit_phone_btn":   "✏️ Edit phone",
		"reg_success":      "🎉 You are registered! Your ticket is below.",
		"curr_profile":     "Your profile:\n\nName: %s\nPhone: %s\nLanguage: %s",
		"name_changed":     "Name updated.",
		"phone_changed":    "Phone updated.",
		"about_text":       "Avlod Adventures — events, trips and community. Follow us:",
		"spots":            "👥 Spots: %d/%d",
		"spots_unlimited":  "👥 Spots: ∞",
		"location_label":   "📍 Location",
		"new_event_notify": "🔥 A new event just dropped! Check the events menu.",
	},
}

// Captions returns every translation of a button caption key. Handlers use
// this to match incoming reply-keyboard presses regardless of language.
func Captions(key string) []string {
	out := make([]string, 0, len(All))
	seen := map[string]struct{}{}
	for _, l := range All {
		s := T(l, key)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// MatchCaption reports whether text equals the caption key in any language.
func MatchCaption(text, key string) bool {
	for _, l := range All {
		if T(l, key) == text {
			return true
		}
	}
	return false
}
