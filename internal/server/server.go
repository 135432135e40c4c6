package server

// Server объединяет HTTP-обработчики отдельных сущностей. Пока сущность одна:
// оценка стоимости.
type Server struct {
	PriceServer
}

func NewServer(
	priceServer PriceServer,
) Server {
	return Server{
		PriceServer: priceServer,
	}
}
