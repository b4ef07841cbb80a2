package bot

const msgHelp = `Я отправляю картинку-предсказание с твоим именем.

• Команда: /predict
• Inline в любом чате: напиши @%s и выбери карточку.`

const msgPending = `⏳ Получаю предсказание…`

const (
	inlineTitle       = `Получить предсказание`
	inlineDescription = `Нажми — и придет твое предсказание дня!`
	btnRevealText     = `🔮 Показать предсказание`
)
