package extract

import "fmt"

const systemPrompt = `Eres un asistente experto en extracción de datos de facturas. ` +
	`Analizas texto o imágenes de facturas y devuelves los ítems en JSON estructurado. ` +
	`Respondes ÚNICAMENTE con un objeto JSON válido, sin texto ni markdown adicional.`

const outputContract = `**Formato de Salida JSON (Obligatorio):**
- Devuelve un objeto JSON con una ÚNICA clave llamada "items".
- El valor de "items" DEBE ser un array de objetos con este esquema:
  - code (string, opcional): código o SKU del producto.
  - description (string, obligatorio): descripción detallada del producto.
  - quantity (number, obligatorio, >= 1): cantidad del producto.
  - catalogPrice (number, opcional, >= 0): precio de catálogo POR UNIDAD.
  - vendorPrice (number, obligatorio, >= 0): precio de venta POR UNIDAD.
- Los campos numéricos deben ser NÚMEROS, no cadenas.
- Si no se encuentran ítems válidos, "items" debe ser un array vacío ([]).

**Lógica de Conversión Numérica (MUY IMPORTANTE):**
- Elimina símbolos de moneda y espacios antes de convertir.
- Usa punto como separador decimal y sin separadores de miles en el JSON.
- Ejemplos (texto de entrada -> número en JSON):
  - "2" -> 2
  - "S/ 20.249,00" (coma es decimal) -> 20249.00
  - "1.234,56" (coma es decimal) -> 1234.56
  - "9.749" (entero, sin decimal explícito) -> 9749
  - "22,50" (coma es decimal) -> 22.50

Ejemplo de respuesta si se encuentran ítems:
{"items": [
  {"code": "COD001", "description": "Camisa Talla L", "quantity": 2, "catalogPrice": 25.00, "vendorPrice": 20.00},
  {"description": "Pantalón Jean Azul", "quantity": 1, "vendorPrice": 45.50}
]}

Ejemplo de respuesta si NO se encuentran ítems:
{"items": []}`

func buildTextPrompt(text string) string {
	return fmt.Sprintf(`Tu tarea es analizar el texto proporcionado y extraer los detalles de cada ítem de la factura.

Texto de entrada:
%s

**Reglas Cruciales para la Extracción de Ítems:**

1. Procesamiento por ítem:
   - Identifica cada ítem o línea de producto en el texto.
   - Para CADA objeto de ítem que generes, TODOS sus datos (código,
     descripción, cantidad, precios) DEBEN pertenecer al mismo ítem del
     texto de entrada.

2. Extracción de campos por ítem:
   - code: el código o SKU del producto. Si no se encuentra un código
     explícito para un ítem, omite el campo. NO INVENTES CÓDIGOS.
   - description: la descripción detallada del producto. Obligatorio.
   - quantity: la cantidad del producto. Obligatorio.
   - catalogPrice: el precio de catálogo por unidad. Opcional si no está.
   - vendorPrice: el precio de venta por unidad del vendedor. Obligatorio.

%s`, text, outputContract)
}

func buildImagePrompt() string {
	return fmt.Sprintf(`Tu tarea es analizar la imagen de la factura adjunta y extraer los detalles de cada ítem.

Para cada ítem de la factura en la imagen, identifica y extrae:
- code: el código o SKU del producto. Si no se encuentra, omite el campo.
  NO INVENTES CÓDIGOS.
- description: la descripción detallada del producto. Obligatorio.
- quantity: la cantidad del producto (columnas comunes: "Cant.",
  "Cantidad"). Debe ser un número mayor o igual a 1. Obligatorio.
- catalogPrice: el precio de catálogo POR UNIDAD (columnas comunes:
  "Precio Unitario", "P. Unit"). Opcional si no está.
- vendorPrice: el precio de venta POR UNIDAD del vendedor. Obligatorio.
  IMPORTANTE: si la factura muestra un precio total para la línea del ítem
  (columnas como "Vr. Neto", "Subtotal", "Importe Línea", "Total Item"),
  DEBES CALCULAR el precio unitario dividiendo ese total entre la cantidad
  del ítem.

Consideraciones importantes:
- La imagen puede contener múltiples ítems, generalmente en formato tabular.
- TODOS los datos de cada objeto de ítem DEBEN provenir de la misma fila
  visual de la imagen. No mezcles datos de filas distintas.
- Interpreta correctamente los separadores decimales: ignora separadores de
  miles como puntos (.) si el separador decimal es coma (,), y viceversa.
- Si la descripción es muy corta o parece un código, busca una descripción
  más completa cercana.
- No incluyas ítems sin una descripción clara o sin una cantidad válida.

%s`, outputContract)
}
