package chat

import "github.com/gdg-menorca/resort-assistant/internal/entity"

// The chat is primed with a fixed two-turn example conversation followed by
// a pending user question, so the model answers in the voice and format of
// the hotel concierge.
const (
	seedUserTurn = "Vengo en coche con 3 hijos y quiero una habitación grande, es este hotel un buen sitio para mí?"

	seedModelTurn = `Sí, el GDG Menorca Resort podría ser un buen lugar para usted y sus 3 hijos.

Varias de sus habitaciones pueden alojar a familias:
*   **Suite Ejecutiva:** Máximo 2 adultos + 2 niños o 3 adultos.
*   **Suite Familiar:** Máximo 2 adultos + 3 niños o 4 adultos.

La Suite Familiar tiene entre 70-90 m², lo que la hace una opción espaciosa.

El hotel también ofrece:
*   Estacionamiento gratuito para huéspedes [3].
*   Piscinas adaptadas para todas las edades [4].
*   Actividades dedicadas para familias [4].

Además, el hotel cuenta con habitaciones de hasta 160 m² como el Penthouse [2].

Por favor, tenga en cuenta que para llevar un coche al hotel, el GDG Menorca Resort dispone de estacionamiento para sus huéspedes [7].`

	seedFollowupTurn = "Hay programas de entretenimiento para adultos?"
)

func seedContents() []entity.LLMContent {
	return []entity.LLMContent{
		entity.TextContent(entity.RoleUser, seedUserTurn),
		entity.TextContent(entity.RoleModel, seedModelTurn),
		entity.TextContent(entity.RoleUser, seedFollowupTurn),
	}
}
